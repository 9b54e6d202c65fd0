package main

import "github.com/mergington/activities/cmd/mhsactd/cmd"

func main() {
	cmd.Execute()
}
