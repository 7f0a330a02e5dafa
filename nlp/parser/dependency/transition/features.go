package transition

import "strings"

// Configuration feature template: stack-top and stack-second word+tag,
// buffer-front and buffer-second word+tag, the tag pair over the decision
// point, and the labels already assigned to stack-top's children. Feature
// strings are deterministic "name=value" pairs matching the trainer's
// construction.

const NONE = "-NONE-"

func (c *SimpleConfiguration) nodeWord(index int, exists bool) string {
	if !exists {
		return NONE
	}
	return c.Nodes[index].Token
}

func (c *SimpleConfiguration) nodeTag(index int, exists bool) string {
	if !exists {
		return NONE
	}
	return c.Nodes[index].POS
}

// Features extracts the feature vector for the current configuration.
func (c *SimpleConfiguration) Features() []string {
	s0, s0Exists := c.Stack().Index(0)
	s1, s1Exists := c.Stack().Index(1)
	b0, b0Exists := c.Queue().Index(0)
	b1, b1Exists := c.Queue().Index(1)

	s0w, s0t := c.nodeWord(s0, s0Exists), c.nodeTag(s0, s0Exists)
	s1w, s1t := c.nodeWord(s1, s1Exists), c.nodeTag(s1, s1Exists)
	b0w, b0t := c.nodeWord(b0, b0Exists), c.nodeTag(b0, b0Exists)
	b1w, b1t := c.nodeWord(b1, b1Exists), c.nodeTag(b1, b1Exists)

	s0labels := NONE
	if s0Exists && len(c.ChildLabels(s0)) > 0 {
		s0labels = strings.Join(c.ChildLabels(s0), ",")
	}

	return []string{
		"s0.w=" + s0w,
		"s0.t=" + s0t,
		"s0.wt=" + s0w + "|" + s0t,
		"s1.w=" + s1w,
		"s1.t=" + s1t,
		"b0.w=" + b0w,
		"b0.t=" + b0t,
		"b0.wt=" + b0w + "|" + b0t,
		"b1.w=" + b1w,
		"b1.t=" + b1t,
		"s0.t|b0.t=" + s0t + "|" + b0t,
		"s0.ls=" + s0labels,
	}
}
