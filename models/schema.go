package models

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// FileSchema is the published JSON Schema of one data file
type FileSchema struct {
	File   string             `json:"file"`
	Schema *jsonschema.Schema `json:"schema"`
}

// FileSchemas returns JSON Schemas for the viewer and survey files
func FileSchemas(viewersFile, surveyFile string) []FileSchema {
	r := newReflector()
	return []FileSchema{
		{File: viewersFile, Schema: arrayOf(r.Reflect(&ViewerRecord{}), "Viewer records")},
		{File: surveyFile, Schema: arrayOf(r.Reflect(&SurveyRecord{}), "Survey records")},
	}
}

func newReflector() *jsonschema.Reflector {
	labels := make([]any, len(LikertLabels))
	for i, l := range LikertLabels {
		labels[i] = l
	}

	return &jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case reflect.TypeOf(Age{}):
				return &jsonschema.Schema{Type: "number", Description: "age in years"}
			case reflect.TypeOf(Answers{}):
				return &jsonschema.Schema{
					Type:                 "object",
					Description:          "question key to Likert label",
					AdditionalProperties: &jsonschema.Schema{Type: "string", Enum: labels},
				}
			}
			return nil
		},
	}
}

func arrayOf(item *jsonschema.Schema, title string) *jsonschema.Schema {
	item.Version = ""
	return &jsonschema.Schema{
		Version: jsonschema.Version,
		Title:   title,
		Type:    "array",
		Items:   item,
	}
}
