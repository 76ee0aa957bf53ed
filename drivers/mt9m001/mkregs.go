//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/format"
	"log"
	"os"
	"strconv"
	"strings"
	"text/template"
)

var regsTemplate = `
package mt9m001

const (
{{- range . }}
	Reg{{ .Name }} Reg = {{ hex8 .Addr }}
{{- end }}
)

var catalog = map[Reg]register{
{{- range . }}
	Reg{{ .Name }}: {name: "{{ .Name }}", def: {{ hex .Def }}, writable: {{ hex .Writable }}, fixed: {{ hex .Fixed }}, min: {{ .Min }}, parity: {{ .Parity }}, readOnly: {{ .ReadOnly }}},
{{- end }}
}
{{ range . }}{{ if .Fields }}{{ $t := .Name }}
type {{ .Name }} uint16

const {{ .Name }}Default {{ .Name }} = {{ hex .Def }}
{{ range .Fields }}
func (v {{ $t }}) {{ .Name }}() bool { return v&(1<<{{ .Bit }}) != 0 }
func (v {{ $t }}) Set{{ .Name }}(b bool) {{ $t }} { return setBit(v, {{ .Bit }}, b) }
{{ end }}{{ end }}{{ end }}
{{- range . }}{{ if .Fields }}
func (d *Device) {{ .Name }}() ({{ .Name }}, error) {
	v, err := d.Get(Reg{{ .Name }})
	return {{ .Name }}(v), err
}
{{ if not .ReadOnly }}
func (d *Device) Set{{ .Name }}(v {{ .Name }}) error { return d.Set(Reg{{ .Name }}, uint16(v)) }
{{ end }}{{ else }}
func (d *Device) {{ .Name }}() (uint16, error) { return d.Get(Reg{{ .Name }}) }
{{ if not .ReadOnly }}
func (d *Device) Set{{ .Name }}(v uint16) error { return d.Set(Reg{{ .Name }}, v) }
{{ end }}{{ end }}{{ end }}`

type field struct {
	Name string
	Bit  uint
}

type description struct {
	Registers []struct {
		Name    string
		Address string
		Default string
		Pattern string
		Min     uint16
		Parity  string
		Fields  []field
	}
}

type reg struct {
	Name            string
	Addr, Def       uint16
	Writable, Fixed uint16
	Min             uint16
	Parity          string
	ReadOnly        bool
	Fields          []field
}

func parseHex(s string) uint16 {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		log.Fatalln(err)
	}
	return uint16(v)
}

// parsePattern reads a bit pattern, most significant bit first: d is a
// writable bit, 0 and 1 are fixed bits and r marks a read-only register.
func parsePattern(r *reg, pattern string) {
	bits := strings.ReplaceAll(pattern, " ", "")
	if len(bits) != 16 {
		log.Fatalln("pattern must have 16 bits:", pattern)
	}
	for i, c := range bits {
		bit := uint16(1) << (15 - i)
		switch c {
		case 'd':
			r.Writable |= bit
		case '1':
			r.Fixed |= bit
		case '0':
		case 'r':
			r.ReadOnly = true
		default:
			log.Fatalf("invalid bit %q in pattern %q", c, pattern)
		}
	}
}

func usage() {
	fmt.Printf("Usage: %v <description.json> <output.go>\n", os.Args[0])
}

func main() {
	log.Default().SetFlags(log.Lshortfile)
	if len(os.Args) != 3 {
		usage()
		os.Exit(1)
	}

	input, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalln(err)
	}
	var desc description
	if err := json.Unmarshal(input, &desc); err != nil {
		log.Fatalln(err)
	}

	var regs []reg
	for _, d := range desc.Registers {
		r := reg{
			Name:   d.Name,
			Addr:   parseHex(d.Address),
			Def:    parseHex(d.Default),
			Min:    d.Min,
			Fields: d.Fields,
		}
		parsePattern(&r, d.Pattern)
		switch d.Parity {
		case "":
			r.Parity = "parityAny"
		case "even":
			r.Parity = "parityEven"
		case "odd":
			r.Parity = "parityOdd"
		default:
			log.Fatalln("invalid parity:", d.Parity)
		}
		regs = append(regs, r)
	}

	funcs := template.FuncMap{
		"hex":  func(v uint16) string { return fmt.Sprintf("0x%04x", v) },
		"hex8": func(v uint16) string { return fmt.Sprintf("0x%02x", v) },
	}
	tmpl, err := template.New("regsTemplate").Funcs(funcs).Parse(regsTemplate)
	if err != nil {
		log.Fatalln(err)
	}

	source := bytes.NewBuffer(nil)
	err = tmpl.Execute(source, regs)
	if err != nil {
		log.Fatalln(err)
	}

	formattedSource, err := format.Source(source.Bytes())
	if err != nil {
		log.Fatalln(err)
	}
	err = os.WriteFile(os.Args[2], formattedSource, 0644)
	if err != nil {
		log.Fatalln(err)
	}
}
