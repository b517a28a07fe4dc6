package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// previewRegions are the named regions accepted by image_preview.
var previewRegions = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

// greyscaleComponents are the components accepted by image_greyscale.
var greyscaleComponents = []string{"red", "green", "blue", "value", "luma", "intensity"}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func enumProp(description string, values []string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        values,
		"description": description,
	}
}

func matrixProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"items": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "number"},
		},
	}
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// transformSchema builds the schema shared by tools that read one stored
// image and store one result.
func transformSchema(extra map[string]interface{}, required ...string) map[string]interface{} {
	props := map[string]interface{}{
		"name": stringProp("Name of the source image in the store"),
		"dest": stringProp("Name to store the result under. May equal name to replace the source"),
	}
	for k, v := range extra {
		props[k] = v
	}
	return objectSchema(props, append([]string{"name", "dest"}, required...)...)
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Store Management
		{
			Name:        "image_load",
			Description: "Load an image file (png, jpg, gif, bmp, tiff, webp or plain-text ppm) into the store under a name and return its description.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Absolute path to the image file"),
				"name": stringProp("Name to store the image under"),
			}, "path", "name"),
		},
		{
			Name:        "image_save",
			Description: "Save a stored image to a file. The format follows the file extension (png, jpg, gif, bmp, tiff or ppm).",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Destination file path; parent directories are created"),
				"name": stringProp("Name of the stored image"),
			}, "path", "name"),
		},
		{
			Name:        "image_list",
			Description: "List the stored images with their dimensions, channels and mean color.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "image_delete",
			Description: "Remove an image from the store.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Name of the stored image"),
			}, "name"),
		},

		// Inspection
		{
			Name:        "image_info",
			Description: "Describe a stored image: width, height, channel count, sample bounds and mean color.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Name of the stored image"),
			}, "name"),
		},
		{
			Name:        "image_histogram",
			Description: "Compute 256-bin red, green, blue and intensity histograms, with each row also normalized to 0-100.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Name of the stored image"),
			}, "name"),
		},
		{
			Name:        "image_preview",
			Description: "Render a stored image, or a named region of it, as base64-encoded PNG so the result of an operation can be inspected.",
			InputSchema: objectSchema(map[string]interface{}{
				"name":   stringProp("Name of the stored image"),
				"region": enumProp("Optional named region; the whole image when omitted", previewRegions),
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
					"default":     1.0,
				},
			}, "name"),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Name of the stored image"),
				"x":    integerProp("X coordinate (0-based, from left)"),
				"y":    integerProp("Y coordinate (0-based, from top)"),
			}, "name", "x", "y"),
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract the most common colors, quantized to steps of 16, with their share of the image.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProp("Name of the stored image"),
				"count": map[string]interface{}{
					"type":        "integer",
					"description": "Number of colors to return. Default 5",
					"default":     5,
				},
			}, "name"),
		},

		// Channel Operations
		{
			Name:        "image_brighten",
			Description: "Add an amount to every sample, clamped to the image bounds. Negative amounts darken.",
			InputSchema: transformSchema(map[string]interface{}{
				"amount": integerProp("Value added to every sample"),
			}, "amount"),
		},
		{
			Name:        "image_flip",
			Description: "Mirror an image horizontally (columns) or vertically (rows).",
			InputSchema: transformSchema(map[string]interface{}{
				"direction": enumProp("Flip axis", []string{"horizontal", "vertical"}),
			}, "direction"),
		},
		{
			Name:        "image_greyscale",
			Description: "Create a greyscale image from one component. Without a component, the luma color matrix is applied.",
			InputSchema: transformSchema(map[string]interface{}{
				"component": enumProp("Component broadcast to every channel", greyscaleComponents),
			}),
		},
		{
			Name:        "image_split",
			Description: "Split an image into red, green and blue greyscale images.",
			InputSchema: objectSchema(map[string]interface{}{
				"name":  stringProp("Name of the source image"),
				"red":   stringProp("Name for the red channel image"),
				"green": stringProp("Name for the green channel image"),
				"blue":  stringProp("Name for the blue channel image"),
			}, "name", "red", "green", "blue"),
		},
		{
			Name:        "image_combine",
			Description: "Combine three greyscale images into one RGB image. The inputs must share dimensions, channel count and bounds.",
			InputSchema: objectSchema(map[string]interface{}{
				"red":   stringProp("Image supplying the red channel"),
				"green": stringProp("Image supplying the green channel"),
				"blue":  stringProp("Image supplying the blue channel"),
				"dest":  stringProp("Name to store the result under"),
			}, "red", "green", "blue", "dest"),
		},

		// Filters and Transforms
		{
			Name:        "image_blur",
			Description: "Blur an image with a 3x3 Gaussian kernel.",
			InputSchema: transformSchema(nil),
		},
		{
			Name:        "image_sharpen",
			Description: "Sharpen an image with a 5x5 sharpening kernel.",
			InputSchema: transformSchema(nil),
		},
		{
			Name:        "image_filter",
			Description: "Convolve an image with a custom square kernel of odd size. Borders are zero-padded and results clamped to 0-255.",
			InputSchema: transformSchema(map[string]interface{}{
				"kernel": matrixProp("Kernel weights as rows, e.g. [[0,0,0],[0,1,0],[0,0,0]]"),
			}, "kernel"),
		},
		{
			Name:        "image_color_transform",
			Description: "Apply a 3x3 color matrix to the red, green and blue channels. Use a preset or supply a matrix.",
			InputSchema: transformSchema(map[string]interface{}{
				"preset": enumProp("Built-in matrix", []string{"sepia", "luma"}),
				"matrix": matrixProp("Custom 3x3 matrix, used when preset is omitted"),
			}),
		},
		{
			Name:        "image_dither",
			Description: "Dither one channel to black and white using error diffusion.",
			InputSchema: transformSchema(map[string]interface{}{
				"channel": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"red", "green", "blue"},
					"description": "Channel to dither. Default red",
					"default":     "red",
				},
			}),
		},
		{
			Name:        "image_mosaic",
			Description: "Recolor an image as a mosaic of tiles grown around randomly placed seed points.",
			InputSchema: transformSchema(map[string]interface{}{
				"seeds":       integerProp("Number of tiles, between 1 and width*height"),
				"random_seed": integerProp("Optional seed for reproducible tile placement"),
			}, "seeds"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
