package main

import "github.com/addislabs/cropsight/cmd"

func main() {
	cmd.Execute()
}
