// Package openapi exposes the loader and parser contracts used to derive form
// models from OpenAPI 3 request bodies. Implementations live under
// internal/openapi so kin-openapi types never leak into the public API;
// construct them through the root formfield package.
package openapi
