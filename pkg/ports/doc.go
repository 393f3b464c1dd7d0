/*
Package ports defines the driven ports (interfaces) of the jza engine.

These interfaces decouple model handling from storage backends.

# Key Interfaces

  - ModelStore: persists serialized automata under a name (memory, file or Redis).
*/
package ports
