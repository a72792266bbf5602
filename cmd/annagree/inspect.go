package main

import (
	"github.com/gosuri/uiprogress"

	"github.com/plandok/annagree/corpus"
	"github.com/plandok/annagree/inspect"
)

func inspectCommand(paths []string, ui UI) error {

	corpus.SetLogger(nil)

	uiprogress.Start()
	bar := uiprogress.AddBar(len(paths))
	bar.AppendCompleted()
	bar.PrependElapsed()

	var currentName string
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return currentName
	})

	corp, attrVocab, annVocab, err := corpus.Load(paths, corpus.DefaultConfig(), func(current, total int, name string) {
		currentName = name
		bar.Incr()
		if current == total {
			uiprogress.Stop()
		}
	})
	if err != nil {
		uiprogress.Stop()
		return err
	}

	h := inspect.NewHandler(corp, attrVocab, annVocab)
	return h.Run()
}
