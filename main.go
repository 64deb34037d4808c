package main

import "github.com/buysimply/buysimply/cmd"

func main() {
	cmd.Execute()
}
