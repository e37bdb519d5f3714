package main

import (
	"fmt"
	"os"

	"cardsense/cardsense-india/cmd/categorize"
	"cardsense/cardsense-india/cmd/list"
	"cardsense/cardsense-india/cmd/parse"
	"cardsense/cardsense-india/cmd/root"
	"cardsense/cardsense-india/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
