package main

import "github.com/frahmantamala/category-management/cmd"

func main() {
	cmd.Execute()
}
