package main

import "github.com/mj1618/a11y-snapshot/cmd"

func main() {
	cmd.Execute()
}
