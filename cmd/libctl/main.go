package main

import "github.com/5w1tchy/library-admin/cmd/libctl/commands"

func main() {
	commands.Execute()
}
