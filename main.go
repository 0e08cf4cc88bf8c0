package main

import "github.com/djhshih/qlsub/cmd"

func main() {
	cmd.Execute()
}
