package makechap_test

import (
	"fmt"

	"github.com/alnah/go-makechap"
)

// Example numbers a small chapter and prints the rewritten headings.
func Example() {
	res, err := makechap.Renumber([]string{
		`<H1><a name="Preface"></a>Preface</H1>`,
		`<H2>Introduction</H2>`,
		`<H3><a name="Preface_nn9"></a>Conventions</H3>`,
		`<H2><a name="credits">Credits</a></H2>`,
	}, 1, "Preface")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, h := range res.Headings {
		fmt.Printf("H%d %-6s %-12s %s\n", h.Level, h.Label, h.Anchor, h.Text)
	}
	// Output:
	// H1 1      Preface      Preface
	// H2 1.1    Preface_nn2  Introduction
	// H3 1.1.1  Preface_nn3  Conventions
	// H2 1.2    credits      Credits
}

// ExampleResult_ContentsEntry prints the block used to assemble a contents
// page from several chapters.
func ExampleResult_ContentsEntry() {
	res, err := makechap.Renumber([]string{
		`<H1><a name="Intro"></a>Introduction</H1>`,
		`<H2>Overview</H2>`,
	}, 2, "Intro")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(res.ContentsEntry("Intro.html", "Intro", 2))
	// Output:
	// <h3><a href="Intro.html#Intro">2 Introduction</a></h3>
	//
	// <!-- INDEX -->
	// <div class="sectiontoc">
	// <ul>
	// <li><a href="Intro.html#Intro_nn2">Overview</a>
	// </ul>
	// </div>
	// <!-- INDEX -->
}
