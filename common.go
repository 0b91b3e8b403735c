package main

import (
	"fmt"
	"io"
)

func errorf(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}

func fprint(w io.Writer, a ...interface{}) {
	fmt.Fprint(w, a...)
}

func fprintf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, format, a...)
}

func sprintf(format string, a ...interface{}) string {
	return fmt.Sprintf(format, a...)
}
