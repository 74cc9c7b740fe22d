package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/qaforum/qaforum-go/internal/crypto"
)

func main() {
	size := flag.Int("bytes", crypto.MinKeyLength, "key size in bytes")
	flag.Parse()

	key, err := crypto.GenerateKey(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(key)
}
