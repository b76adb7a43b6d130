package readablepub_test

import (
	"context"
	"fmt"
	"os"

	"github.com/mrjoshuak/readablepub"
)

func ExampleNew() {
	// A token is required
	_, err := readablepub.New()
	fmt.Println(err)
	// Output: no parser API token configured
}

func ExampleConverter_ConvertURL() {
	conv, err := readablepub.New(
		readablepub.WithToken(os.Getenv("READABILITY_PARSER_TOKEN")),
		readablepub.WithOutputDir(os.TempDir()),
	)
	if err != nil {
		fmt.Printf("Error creating converter: %v\n", err)
		return
	}

	path, err := conv.ConvertURL(context.Background(), "https://example.com/some-article")
	if err != nil {
		fmt.Printf("Error converting article: %v\n", err)
		return
	}
	fmt.Println("Written to", path)
}
