package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/eringen/daylog/scaffold"
)

func runNew(dir string) error {
	name := filepath.Base(filepath.Clean(dir))
	data := scaffold.Data{
		ProjectName: name,
		SiteName:    scaffold.ToTitle(name),
		Today:       time.Now().Format("2006-01-02"),
	}

	fmt.Printf("Creating new daylog site: %s\n\n", dir)
	if err := scaffold.Generate(dir, data, os.Stdout); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  DATA_DIR=%s daylog serve\n", dir)
	fmt.Println()
	fmt.Println("Add entries to data/entries.json and adjust settings.json to taste.")
	fmt.Printf("Set SHELL_PATH=%s to render into your own index.html.\n", filepath.Join(dir, "index.html"))
	return nil
}
