// Command hxkit renders template forms and inspects form parameters from
// the command line.
//
//	hxkit render page.yml
//	hxkit params 'entry[tags][]=a&entry[tags][]=b'
//	hxkit serialize form.html --format yaml
//	hxkit seal state.yml --sensitive
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
