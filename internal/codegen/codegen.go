// Package codegen renders a dataset as Go source so it can be compiled into
// the embedded lookup package.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"text/template"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
)

var tmpl = template.Must(template.New("embedded").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(`// Code generated by zengin-gen. DO NOT EDIT.

package {{ .Package }}

import "github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"

var banks = zengin.Banks{
{{- range .Banks }}
	{{ quote .Code }}: {Code: {{ quote .Code }}, Name: {{ quote .Name }}, Kana: {{ quote .Kana }}, Hira: {{ quote .Hira }}, Roma: {{ quote .Roma }}},
{{- end }}
}

var branches = map[string]zengin.Branches{
{{- range .Groups }}
	{{ quote .BankCode }}: {
	{{- range .Branches }}
		{{ quote .Code }}: {Code: {{ quote .Code }}, Name: {{ quote .Name }}, Kana: {{ quote .Kana }}, Hira: {{ quote .Hira }}, Roma: {{ quote .Roma }}},
	{{- end }}
	},
{{- end }}
}
`))

type group struct {
	BankCode string
	Branches []zengin.Branch
}

type view struct {
	Package string
	Banks   []zengin.Bank
	Groups  []group
}

// Render emits a gofmt-formatted Go file declaring the package-level banks
// and branches tables for ds. Every map is written in code order so the
// output is reproducible.
func Render(pkg string, ds *zengin.Dataset) ([]byte, error) {
	v := view{Package: pkg}
	for _, code := range ds.Codes() {
		bank, _ := ds.Bank(code)
		v.Banks = append(v.Banks, bank)
		brs, _ := ds.Branches(code)
		v.Groups = append(v.Groups, group{BankCode: code, Branches: brs.Sorted()})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}
