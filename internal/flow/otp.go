package flow

import "sync"

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// CodeInput models the six single-digit entry fields of the verification
// step. Entering a digit advances focus to the next field, deleting
// retreats to the previous one, and the completion callback fires exactly
// once when the sixth digit lands, never on a partial code. After
// MarkError, the next digit clears everything and entry restarts at
// field 0.
type CodeInput struct {
	mu         sync.Mutex
	digits     [CodeLength]rune
	focus      int
	fired      bool
	errored    bool
	onComplete func(code string)
}

// NewCodeInput creates a code input. onComplete receives the full
// six-digit code and may be nil.
func NewCodeInput(onComplete func(code string)) *CodeInput {
	return &CodeInput{onComplete: onComplete}
}

// Enter places a digit in the focused field and advances. Non-digits and
// digits past the last field are rejected. Returns whether the input was
// accepted.
func (c *CodeInput) Enter(digit rune) bool {
	if digit < '0' || digit > '9' {
		return false
	}

	c.mu.Lock()
	if c.errored {
		c.clearLocked()
	}
	if c.focus >= CodeLength {
		c.mu.Unlock()
		return false
	}
	c.digits[c.focus] = digit
	c.focus++

	fire := c.focus == CodeLength && !c.fired
	if fire {
		c.fired = true
	}
	code := c.codeLocked()
	cb := c.onComplete
	c.mu.Unlock()

	if fire && cb != nil {
		cb(code)
	}
	return true
}

// Backspace clears the previous field and retreats focus to it.
func (c *CodeInput) Backspace() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.focus > 0 {
		c.focus--
		c.digits[c.focus] = 0
	}
}

// Focus returns the index of the field awaiting input; CodeLength means
// the code is complete.
func (c *CodeInput) Focus() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

// Code returns the digits entered so far.
func (c *CodeInput) Code() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codeLocked()
}

// Len returns how many digits have been entered.
func (c *CodeInput) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

// MarkError flags the last submission as failed. The next Enter restarts
// entry from an empty first field.
func (c *CodeInput) MarkError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errored = true
}

// Reset clears all fields immediately.
func (c *CodeInput) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *CodeInput) clearLocked() {
	c.digits = [CodeLength]rune{}
	c.focus = 0
	c.fired = false
	c.errored = false
}

func (c *CodeInput) codeLocked() string {
	code := make([]rune, 0, c.focus)
	for i := 0; i < c.focus; i++ {
		code = append(code, c.digits[i])
	}
	return string(code)
}
