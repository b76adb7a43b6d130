/*
Package readablepub saves online articles as EPUB files for offline reading.

The readable version of a page is obtained from the Readability Parser API
(or any service answering the same JSON shape). Every image the article
references is downloaded and embedded, and the result is written as a single
EPUB named after the slugged article title. Scripts and stylesheets are not
included.

Basic Usage:

    import "github.com/mrjoshuak/readablepub"

    conv, err := readablepub.New(readablepub.WithToken(token))
    if err != nil {
        // Handle error
    }

    path, err := conv.ConvertURL(ctx, "https://example.com/some-article")
    if err != nil {
        // Handle error
    }
    fmt.Println("written to", path)

Options:

    conv, err := readablepub.New(
        readablepub.WithToken(token),
        readablepub.WithOutputDir("books"),
        readablepub.WithAPIBaseURL("https://parser.example.com"),
        readablepub.WithTimeout(time.Minute),
    )

A download failure of the article or of any single image aborts the whole
conversion and no file is written. Images are not deduplicated and two image
URLs that slug to the same local name share one embedded file.

Command Line Usage:

    readablepub https://example.com/some-article --token TOKEN

Without --token the first line of ~/.readability_parser_token is used.
*/
package readablepub
