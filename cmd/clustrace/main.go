// Command clustrace builds transmission networks from pairwise distance
// files and annotates already-built networks with patient attributes.
package main

import "clustrace/cmd"

func main() {
	cmd.Execute()
}
