/*
Package jza models jazz harmony as walks through a weighted, nondeterministic
finite automaton.

States are harmonic functions (tonic, predominant, dominant and their
elaborations) and transitions are labeled with Mehegan chord symbols such as
"IIm", "Vx" or "bVIIx". An automaton is built with the default topology,
trained on chord sequences, and then used to validate progressions, explain
them as functional paths, and generate or reharmonize new ones.

# Engine

Engine is the concurrency-safe entry point. It owns one automaton, a symbol
table and a model store.

	eng, err := jza.New(jza.WithStore(file.New(".jza/models")))
	if err != nil {
		log.Fatal(err)
	}

	song, _ := eng.ParseLine("IM VIm IIm Vx IM")
	if _, err := eng.Train(song); err != nil {
		log.Fatal(err)
	}

	seq, err := eng.Generate(jza.GenerateRequest{Length: 4, Start: song[0], End: song[0]})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(seq)

	_ = eng.Save(context.Background())

The lower level packages can be used directly: pkg/automaton holds the
automaton and sequence editing, pkg/builder the default topology, pkg/symbol
the Mehegan notation and pkg/corpus chart files.
*/
package jza
