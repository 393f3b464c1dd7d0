package jza_test

import (
	"fmt"
	"log"

	"github.com/aretw0/jza"
)

func ExampleEngine() {
	eng, err := jza.New(jza.WithSeed(42))
	if err != nil {
		log.Fatal(err)
	}

	song, err := eng.ParseLine("IM VIm IIm Vx IM")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := eng.Train(song); err != nil {
		log.Fatal(err)
	}

	fmt.Println(eng.Validate(song) == nil)
	// Output: true
}
