// Package script renders call-script bodies by substituting placeholder
// tokens against the calling context.
package script

import "strings"

// The recognized placeholder tokens. Matching is textual and case-sensitive;
// any other @Word passes through unchanged.
const (
	TokenRepType  = "@RepType"
	TokenLastName = "@LastName"
	TokenZipCode  = "@ZipCode"
)

// ZipCodeFallback is rendered when no zip code is known.
const ZipCodeFallback = "Not set"

// Context is the information available when rendering a script. A preview
// context carries only the zip code; a call context additionally names the
// representative being called.
type Context struct {
	RepRole string
	RepName string
	ZipCode string
	hasRep  bool
}

// PreviewContext renders for the script list, before any call is active.
func PreviewContext(zipCode string) Context {
	return Context{ZipCode: zipCode}
}

// CallContext renders for one active call.
func CallContext(repRole, repName, zipCode string) Context {
	return Context{RepRole: repRole, RepName: repName, ZipCode: zipCode, hasRep: true}
}

// Resolve substitutes every occurrence of the recognized tokens. @ZipCode
// always resolves, falling back to "Not set" when unknown. @RepType and
// @LastName resolve only with a call context; without one they are left in
// place, matching the long-standing preview behavior.
func Resolve(body string, ctx Context) string {
	zip := ctx.ZipCode
	if strings.TrimSpace(zip) == "" {
		zip = ZipCodeFallback
	}
	out := strings.ReplaceAll(body, TokenZipCode, zip)

	if ctx.hasRep {
		out = strings.ReplaceAll(out, TokenRepType, ctx.RepRole)
		out = strings.ReplaceAll(out, TokenLastName, lastName(ctx.RepName))
	}
	return out
}

// lastName returns the final whitespace-delimited token of a full name, or
// the whole name when it has no spaces.
func lastName(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return full
	}
	return parts[len(parts)-1]
}
