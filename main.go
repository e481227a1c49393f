package main

import "github.com/jeiman/git-workflow/cmd"

func main() {
	cmd.Execute()
}
