package provider

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/ir"
)

// DirectivePrefix introduces a directive line comment:
//
//	// gqlschema:config nullability=maybe skipTypename=true
const DirectivePrefix = "gqlschema:"

// directivesFromComments extracts gqlschema directives from line comments.
func directivesFromComments(path string, comments []lineComment) []ir.Directive {
	var out []ir.Directive
	for _, c := range comments {
		text := strings.TrimSpace(c.text)
		if !strings.HasPrefix(text, DirectivePrefix) {
			continue
		}
		text = strings.TrimPrefix(text, DirectivePrefix)
		name, args, _ := strings.Cut(text, " ")
		if name == "" {
			continue
		}
		out = append(out, ir.Directive{
			Name:   name,
			Args:   strings.TrimSpace(args),
			Source: ir.Source{File: path, Line: c.line, Column: c.col},
		})
	}
	return out
}

// ParseDirectiveArgs splits "key=value key2=\"quoted value\" flag" into
// url.Values. A bare key is recorded with the value "true". Repeated keys
// accumulate values in order.
func ParseDirectiveArgs(args string) (url.Values, error) {
	values := url.Values{}
	s := strings.TrimSpace(args)
	for s != "" {
		end := strings.IndexAny(s, " \t=")
		if end < 0 {
			values.Add(s, "true")
			break
		}
		key := s[:end]
		if key == "" {
			return nil, fmt.Errorf("directive argument without a key in %q", args)
		}
		s = s[end:]
		if s[0] != '=' {
			values.Add(key, "true")
			s = strings.TrimSpace(s)
			continue
		}
		s = s[1:]

		var value string
		if strings.HasPrefix(s, `"`) {
			closing := strings.IndexByte(s[1:], '"')
			if closing < 0 {
				return nil, fmt.Errorf("unterminated quoted value for %q", key)
			}
			value = s[1 : closing+1]
			s = s[closing+2:]
		} else {
			stop := strings.IndexAny(s, " \t")
			if stop < 0 {
				stop = len(s)
			}
			value = s[:stop]
			s = s[stop:]
		}
		values.Add(key, value)
		s = strings.TrimSpace(s)
	}
	return values, nil
}
