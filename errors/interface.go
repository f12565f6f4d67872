/*
 * MIT License
 *
 * Copyright (c) 2026 fengmingdev
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package errors provides the error taxonomy used across the connection
// core: numeric codes (similar in spirit to HTTP status codes), parent-error
// chains, and stack-trace capture, with compatibility for errors.Is/As.
package errors

import (
	"errors"
	"fmt"
)

// FuncMap iterates an error hierarchy; returning false stops the walk.
type FuncMap func(e error) bool

// Error is a taxonomy-carrying error with an optional parent chain.
//
// Modification methods (Add, SetParent) are not safe for concurrent use;
// read methods are. Components that fail a pending operation from multiple
// goroutines must build the Error on a single goroutine before handing it
// to waiters.
type Error interface {
	error

	// IsCode reports whether this error's own code equals the given code.
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent has the given code.
	HasCode(code CodeError) bool
	// GetCode returns this error's own code.
	GetCode() CodeError
	// GetParentCode returns the unique set of codes in this error and its parents.
	GetParentCode() []CodeError

	// Is implements compatibility with the standard errors.Is.
	Is(e error) bool

	// HasParent reports whether this error carries at least one parent.
	HasParent() bool
	// GetParent returns the flattened parent chain; withSelf also includes this error.
	GetParent(withSelf bool) []error
	// Map walks this error then its parents in order, stopping if fct returns false.
	Map(fct FuncMap) bool

	// Add appends the given errors as parents, flattening any Error already in the chain.
	Add(parent ...error)
	// SetParent replaces the parent chain with the given errors.
	SetParent(parent ...error)

	// Code returns the numeric code of this error.
	Code() uint16
	// CodeSlice returns the numeric codes of this error and its parents.
	CodeSlice() []uint16

	// CodeError renders this error (code + message only, no parents).
	CodeError() string
	// CodeErrorSlice renders this error and its parents, one string per error.
	CodeErrorSlice() []string

	// StringError returns this error's message with no parents.
	StringError() string

	// GetTrace returns the file:line:func capture point for this error.
	GetTrace() string
	// GetTraceSlice returns the trace for this error and all its parents.
	GetTraceSlice() []string

	// Unwrap provides compatibility with errors.Is / errors.As (Go 1.20+ multi-unwrap).
	Unwrap() []error
}

// New returns a new Error with the given code and message, capturing the
// call site as its trace. parent, if non-nil, is recorded as a parent error.
func New(code CodeError, message string, parent error) Error {
	e := &ers{
		c: code.Uint16(),
		e: message,
		t: getFrame(),
	}
	if parent != nil {
		e.Add(parent)
	}
	return e
}

// Newf is New with fmt.Sprintf-style formatting of the message.
func Newf(code CodeError, parent error, format string, args ...interface{}) Error {
	return New(code, fmt.Sprintf(format, args...), parent)
}

// Is reports whether err (or its chain) is an *Error with the given code.
func Is(err error, code CodeError) bool {
	var e Error
	if errors.As(err, &e) {
		return e.HasCode(code)
	}
	return false
}
