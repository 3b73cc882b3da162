// Package certificate fills certificate templates with student and group data.
package certificate

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	TokenInstitution = "[NOMBRE_INSTITUCION]"
	TokenStudent     = "[NOMBRE_ESTUDIANTE]"
	TokenLevel       = "[NOMBRE_NIVEL]"
	TokenProgramType = "[TIPO_PROGRAMA]"
	TokenShift       = "[TURNO_PROGRAMA]"
	TokenTeacher     = "[NOMBRE_MAESTRO]"
	TokenSede        = "[NOMBRE_SEDE]"
	TokenCode        = "[CODIGO_CERTIFICADO]"
)

// Context holds the resolved values for one student and level. Blank fields use the token fallback.
type Context struct {
	InstitutionName string `json:"institution_name"`
	StudentName     string `json:"student_name"`
	LevelName       string `json:"level_name"`
	ProgramType     string `json:"program_type"`
	ProgramShift    string `json:"program_shift"`
	TeacherName     string `json:"teacher_name"`
	SedeName        string `json:"sede_name"`
	CertificateCode string `json:"certificate_code"`
}

type substitution struct {
	token    string
	fallback string
	resolve  func(Context) string
}

var substitutions = []substitution{
	{TokenInstitution, "INSTITUCIÓN EDUCATIVA", func(c Context) string { return c.InstitutionName }},
	{TokenStudent, "ESTUDIANTE", func(c Context) string { return c.StudentName }},
	{TokenLevel, "NIVEL NO ESPECIFICADO", func(c Context) string { return c.LevelName }},
	{TokenProgramType, "GENERAL", func(c Context) string { return c.ProgramType }},
	{TokenShift, "NO ESPECIFICADO", func(c Context) string { return c.ProgramShift }},
	{TokenTeacher, "NO ASIGNADO", func(c Context) string { return c.TeacherName }},
	{TokenSede, "SEDE PRINCIPAL", func(c Context) string { return c.SedeName }},
	{TokenCode, "N/A", func(c Context) string { return c.CertificateCode }},
}

// Tokens returns the supported placeholder tokens in substitution order.
func Tokens() []string {
	tokens := make([]string, 0, len(substitutions))
	for _, s := range substitutions {
		tokens = append(tokens, s.token)
	}
	return tokens
}

// Render replaces every occurrence of the known tokens in a single pass.
// Tokens are case-sensitive; unknown bracketed tokens are left as they are.
func Render(template string, ctx Context) string {
	// a Caser keeps state, so each call gets its own
	upper := cases.Upper(language.Und)
	pairs := make([]string, 0, len(substitutions)*2)
	for _, s := range substitutions {
		value := strings.TrimSpace(s.resolve(ctx))
		if value == "" {
			value = s.fallback
		}
		pairs = append(pairs, s.token, upper.String(value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
