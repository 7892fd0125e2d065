//go:build !unix

package tui

const canPark = false

func parkProcess() {}
