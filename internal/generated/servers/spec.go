package servers

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// SwagInstance is the swag registry name the swagger UI reads the document from.
const SwagInstance = "printdelivery"

//go:embed openapi.yaml
var openapiDocument []byte

var (
	swaggerOnce sync.Once
	swaggerDoc  *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document. It is parsed
// once; callers must not mutate the result.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openapiDocument)
		if err != nil {
			swaggerErr = fmt.Errorf("error loading OpenAPI document: %w", err)
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			swaggerErr = fmt.Errorf("invalid OpenAPI document: %w", err)
			return
		}
		swaggerDoc = doc
	})
	return swaggerDoc, swaggerErr
}

type swagDoc struct {
	json string
}

func (d swagDoc) ReadDoc() string {
	return d.json
}

var registerOnce sync.Once

// RegisterSwag publishes the document under SwagInstance for echo-swagger.
// Repeated calls are no-ops.
func RegisterSwag() error {
	doc, err := GetSwagger()
	if err != nil {
		return err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}
	registerOnce.Do(func() {
		swag.Register(SwagInstance, swagDoc{json: string(data)})
	})
	return nil
}
