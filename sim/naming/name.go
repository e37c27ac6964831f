package naming

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// A Name is a hierarchical name made of dot-separated tokens, such as
// "Router.Out[2]".
type Name struct {
	Tokens []NameToken
}

// NameToken is one element of a name, with the indices that follow it.
type NameToken struct {
	ElemName string
	Index    []int
}

// ParseName splits a name into tokens. It only checks the brackets; use
// Validate for the full convention.
func ParseName(name string) (Name, error) {
	parts := strings.Split(name, ".")
	n := Name{Tokens: make([]NameToken, 0, len(parts))}

	for _, part := range parts {
		token, err := parseToken(part)
		if err != nil {
			return Name{}, err
		}

		n.Tokens = append(n.Tokens, token)
	}

	return n, nil
}

func parseToken(part string) (NameToken, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if strings.ContainsRune(part, ']') {
			return NameToken{}, errors.New("brackets do not match")
		}

		return NameToken{ElemName: part}, nil
	}

	token := NameToken{ElemName: part[:open]}
	rest := part[open:]

	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end < 0 {
			return NameToken{}, errors.New("brackets do not match")
		}

		index, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return NameToken{}, fmt.Errorf("index %q is not an integer", rest[1:end])
		}

		token.Index = append(token.Index, index)
		rest = rest[end+1:]
	}

	return token, nil
}

// Validate checks the naming convention:
//   - elements are separated by dots and none of them is empty, so "Line.Queue"
//     is valid but "Line..Queue" and "Line.Queue." are not;
//   - elements are capitalized CamelCase, without underscores, dashes, quotes
//     or spaces;
//   - elements in a series carry their index in brackets, e.g. "Router.Out[2]".
func Validate(name string) error {
	n, err := ParseName(name)
	if err != nil {
		return fmt.Errorf("name %q is not valid: %w", name, err)
	}

	for _, token := range n.Tokens {
		if err := validateElement(token.ElemName); err != nil {
			return fmt.Errorf("name %q is not valid: %w", name, err)
		}
	}

	return nil
}

func validateElement(elem string) error {
	if elem == "" {
		return errors.New("element must not be empty")
	}

	if i := strings.IndexAny(elem, "_\"'- "); i >= 0 {
		return fmt.Errorf("element must not contain %q", elem[i])
	}

	if elem[0] < 'A' || elem[0] > 'Z' {
		return errors.New("element must start with a capital letter")
	}

	return nil
}

// NameMustBeValid panics if Validate rejects the name.
func NameMustBeValid(name string) {
	if err := Validate(name); err != nil {
		panic(err.Error())
	}
}

// BuildName joins a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex joins a parent name and an indexed element name.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}
