package main

import "github.com/reoring/formskema/cmd/formskema/cmd"

func main() {
	cmd.Execute()
}
