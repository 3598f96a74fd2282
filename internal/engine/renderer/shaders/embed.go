// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LitVertexShader transforms vertices into view space for lighting.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader shades with the sun and point/spot lights.
//
//go:embed lit.frag
var LitFragmentShader string

// UnlitVertexShader is the vertex shader for light markers.
//
//go:embed unlit.vert
var UnlitVertexShader string

// UnlitFragmentShader outputs the material's emissive color.
//
//go:embed unlit.frag
var UnlitFragmentShader string
