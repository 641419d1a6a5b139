package main

import "github.com/gaurav-prasanna/linkpipe/cmd"

func main() {
	cmd.Execute()
}
