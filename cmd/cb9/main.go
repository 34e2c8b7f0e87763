package main

import "cb9-core/internal/cmd"

func main() {
	cmd.Execute()
}
