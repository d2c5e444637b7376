package digest_test

import (
	"fmt"
	"io"

	"github.com/codahale/hashbridge"
	"github.com/codahale/hashbridge/schemes/digest"
)

func Example() {
	h, err := digest.New(hashbridge.SHA256)
	if err != nil {
		panic(err)
	}
	_, _ = io.WriteString(h, "hello")
	_, _ = io.WriteString(h, " world")

	fmt.Printf("%x\n", h.Sum(nil))

	// Output:
	// b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9
}

func Example_md5() {
	h, err := digest.New(hashbridge.MD5)
	if err != nil {
		panic(err)
	}
	_, _ = io.WriteString(h, "hello world")

	fmt.Printf("%x\n", h.Sum(nil))

	// Output:
	// 5eb63bbbe01eeed093cb22bb8f5acdc3
}
