package main

import "github.com/dbsmedya/sfaudit/cmd/sfaudit/cmd"

func main() {
	cmd.Execute()
}
