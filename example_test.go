package htmlcleaner_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/cleanmark/htmlcleaner"
)

func ExampleClean() {
	input := `<div style="color:red" onclick="x()">hi</div>`
	out, _ := htmlcleaner.Clean(input, htmlcleaner.Options{})
	fmt.Println(out)
	// Output: <div>hi</div>
}

func ExampleClean_removeComments() {
	input := `<!-- draft --><p>done</p>`
	out, _ := htmlcleaner.Clean(input, htmlcleaner.Options{RemoveComments: true})
	fmt.Println(out)
	// Output: <p>done</p>
}

func ExampleIsFragment() {
	fmt.Println(htmlcleaner.IsFragment(`<p>hi</p>`))
	fmt.Println(htmlcleaner.IsFragment(`<!DOCTYPE html><html></html>`))
	// Output:
	// true
	// false
}

func ExampleCleanWithProgress() {
	input := strings.Repeat(`<p style="margin:0">x</p>`, 250)
	_, _ = htmlcleaner.CleanWithProgress(context.Background(), input, htmlcleaner.Options{},
		func(percent, processed, total int) {
			fmt.Printf("%d%% (%d/%d)\n", percent, processed, total)
		})
	// Output:
	// 40% (100/250)
	// 80% (200/250)
	// 100% (250/250)
}
