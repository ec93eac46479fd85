package console

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// readLine returns io.EOF only when the input is exhausted with nothing left.
func (p *prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// choice re-asks until the answer matches one of choices, ignoring case.
func (p *prompter) choice(prompt string, choices []string) (string, error) {
	normalized := make(map[string]string, len(choices))
	for _, c := range choices {
		normalized[strings.ToLower(c)] = c
	}
	label := fmt.Sprintf("%s (%s): ", prompt, strings.Join(choices, ", "))

	for {
		answer, err := p.readLine(label)
		if err != nil {
			return "", err
		}
		if c, ok := normalized[strings.ToLower(answer)]; ok {
			return c, nil
		}
		fmt.Fprintln(p.out, "Invalid option. Please choose from the list above.")
	}
}

func (p *prompter) positiveFloat(prompt string) (float64, error) {
	for {
		raw, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			fmt.Fprintln(p.out, "Please enter a numeric quantity.")
			continue
		}
		if value <= 0 {
			fmt.Fprintln(p.out, "Quantity must be greater than zero.")
			continue
		}
		return value, nil
	}
}

func (p *prompter) required(prompt, complaint string) (string, error) {
	for {
		answer, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p.out, complaint)
	}
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
