package main

import "github.com/colorpage/colorpage/pkg/cli"

func main() {
	cli.Run()
}
