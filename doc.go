// Package makechap numbers the headings of an HTML documentation chapter and
// builds its table of contents.
//
// # Quick Start
//
//	res, err := makechap.New().Process(makechap.Input{
//	    Name:    "Preface.html",
//	    Content: string(data),
//	    Number:  1,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("Preface.html", []byte(res.Content), 0644)
//	fmt.Print(res.ContentsEntry("Preface.html", "Preface", 1))
//
// # Headings
//
// Headings H1 to H5 must each sit on one line. Two layouts are accepted and
// both are rewritten to the second one:
//
//	<H2><a name="Preface_nn2"></a>1.1 Introduction</H2>
//	<H2><a name="Preface_nn2">1.1 Introduction</a></H2>
//
// A heading without an anchor is accepted too. Exactly one of the two text
// positions must hold the title; otherwise the pass fails with a *HeadingError.
//
// H1 takes the chapter number, H2 to H5 take hierarchical labels ("1.2.3").
// Anchor names containing "_nn" and a digit are treated as generated and are
// renamed "<base>_nn<i>" on every run. Any other anchor name is kept, so give a
// heading a hand-written name to link to it from elsewhere.
//
// # Index
//
// The nested index of H2 to H5 is written after each H1 between two
// IndexMarker lines. On the next run the old block is dropped and rebuilt,
// which makes processing a chapter twice produce the same text as once.
package makechap
