package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is what clicking a node asks the host to do.
type Action int

const (
	ActionNone Action = iota
	// ActionJump jumps to the wall in Node.Arg.
	ActionJump
	ActionDismissIntro
	ActionCloseModal
)

// Node is a single UI element: panel, label, button. It has optional class and id for CSS
// matching, bounds, and either one line of Text or pre-wrapped Lines.
type Node struct {
	Class  string // e.g. "pill" for .pill; several classes are space-separated
	ID     string // e.g. "modal" for #modal
	Bounds rl.Rectangle
	Text   string
	Lines  []string
	Action Action
	Arg    int
}

// NewNode creates a node with class, id and text.
func NewNode(class, id, text string) *Node {
	return &Node{Class: class, ID: id, Text: text}
}

// Contains reports whether the screen point lies inside the node.
func (n *Node) Contains(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.NewVector2(x, y), n.Bounds)
}
