package main

import "github.com/fatih/color"

var (
	Red       = color.New(color.FgRed)
	Green     = color.New(color.FgGreen)
	GreenBold = color.New(color.FgGreen).Add(color.Bold)
	Cyan      = color.New(color.FgCyan)
	CyanBold  = color.New(color.FgCyan).Add(color.Bold)
	Faint     = color.New(color.Faint)
)
