// Command jza trains, queries and serves chord-function models.
package main

func main() {
	Execute()
}
