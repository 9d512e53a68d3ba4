package schema

import (
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var kindPrinter = message.NewPrinter(language.English)

// Violation reports the first structural violation found in a manifest. The
// full cause tree remains available for verbose output.
type Violation struct {
	// InstancePath locates the offending value in the manifest, as a JSON
	// pointer. For missing required properties the path includes the missing
	// property name.
	InstancePath string

	// Keyword is the schema rule that was violated, such as "required" or
	// "enum".
	Keyword string

	// Message is the human-readable description of the violation.
	Message string

	cause *jsonschema.ValidationError
}

func (v *Violation) Error() string {
	return "manifest does not conform to schema: " + v.Message + " at '" + v.InstancePath + "'"
}

// Detail returns the validation library's full multi-line cause tree.
func (v *Violation) Detail() string {
	return v.cause.Error()
}

// newViolation picks one leaf cause from the validation error tree. Leaves
// are ordered by instance path, then message, because the library does not
// guarantee a stable cause order between runs.
func newViolation(root *jsonschema.ValidationError) *Violation {
	type leaf struct {
		err     *jsonschema.ValidationError
		path    string
		message string
	}

	var leaves []leaf
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			leaves = append(leaves, leaf{
				err:     e,
				path:    violationPath(e),
				message: e.ErrorKind.LocalizedString(kindPrinter),
			})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(root)

	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].path != leaves[j].path {
			return leaves[i].path < leaves[j].path
		}
		return leaves[i].message < leaves[j].message
	})

	first := leaves[0]
	return &Violation{
		InstancePath: first.path,
		Keyword:      strings.Join(first.err.ErrorKind.KeywordPath(), "/"),
		Message:      first.message,
		cause:        root,
	}
}

// violationPath renders an instance location as a JSON pointer. A missing
// required property extends the path of its parent object, so an absent
// metadata.version reports /metadata/version rather than /metadata.
func violationPath(e *jsonschema.ValidationError) string {
	segments := e.InstanceLocation
	if required, ok := e.ErrorKind.(*kind.Required); ok && len(required.Missing) > 0 {
		segments = append(append([]string{}, segments...), required.Missing[0])
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}
