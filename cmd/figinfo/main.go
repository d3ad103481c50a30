package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"figkit"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/canvas"
)

type Main struct {
	DPI   float64 `default:"96" desc:"Raster resolution in dots per inch"`
	Input string  `index:"0" desc:"Figure file"`
}

func main() {
	cmd := argp.NewCmd(&Main{}, "Show the size and creator metadata of saved figures")
	cmd.Parse()
	cmd.PrintHelp()
}

func (cmd *Main) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	data, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(cmd.Input)), ".")
	size, err := figkit.DecodeSize(data, format, canvas.DPI(cmd.DPI))
	if err != nil {
		return err
	}
	fmt.Printf("size: %.4g x %.4g mm\n", size.W, size.H)
	if creator, ok := figkit.ReadCreator(data, format); ok {
		fmt.Printf("creator: %s\n", creator)
	}
	return nil
}
