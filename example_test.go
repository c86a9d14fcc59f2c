package segalloc_test

import (
	"fmt"

	"github.com/segalloc/segalloc"
)

func ExampleNew() {
	c, err := segalloc.New(make([]byte, 1<<16))
	if err != nil {
		panic(err)
	}

	p := c.Allocate(128)
	fmt.Println(len(p))
	fmt.Println(c.Check())

	c.Free(p)
	// Output:
	// 128
	// <nil>
}

func ExampleContext_Reallocate() {
	c, err := segalloc.New(make([]byte, 1<<16))
	if err != nil {
		panic(err)
	}

	p := c.Allocate(4)
	copy(p, "go!!")

	p = c.Reallocate(p, 8)
	fmt.Printf("%s\n", p[:4])
	fmt.Println(len(p))
	// Output:
	// go!!
	// 8
}
