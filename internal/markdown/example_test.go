// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown_test

import (
	"fmt"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/markdown"
)

func ExampleToHTML() {
	fmt.Println(markdown.ToHTML("## Closures\n- capture **scope**\n- use `defer` carefully"))
	// Output:
	// <h3>Closures</h3>
	// <ul>
	// <li>capture <strong>scope</strong></li>
	// <li>use <code>defer</code> carefully</li>
	// </ul>
}

func ExampleParse() {
	for _, n := range markdown.Parse("# Title\n\n> quoted") {
		switch n.Kind {
		case markdown.KindHeading:
			fmt.Printf("h%d %s\n", n.Level, markdown.PlainText(n.Runs))
		case markdown.KindBlank:
			fmt.Println("blank")
		case markdown.KindQuote:
			fmt.Println("quote", markdown.PlainText(n.Runs))
		}
	}
	// Output:
	// h2 Title
	// blank
	// quote quoted
}
