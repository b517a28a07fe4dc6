// Package server implements the MCP (Model Context Protocol) server for image editing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the raster engine
// through the MCP protocol. Images are loaded into a named store and every
// editing tool reads its source by name and stores its result under a
// caller-chosen name, so clients can chain operations without touching disk.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Store Management:
//   - image_load: Read a file into the store
//   - image_save: Write a stored image to a file
//   - image_list: Describe every stored image
//   - image_delete: Remove a stored image
//
// Inspection:
//   - image_info: Dimensions, channels, bounds and mean color
//   - image_histogram: Per-channel and intensity histograms
//   - image_preview: Base64 PNG of the image or a named region
//   - image_sample_color: Color at a pixel
//   - image_dominant_colors: Quantized color palette
//
// Channel Operations:
//   - image_brighten, image_flip, image_greyscale, image_split, image_combine
//
// Filters and Transforms:
//   - image_blur, image_sharpen, image_filter (custom kernel)
//   - image_color_transform (sepia, luma or custom 3x3 matrix)
//   - image_dither, image_mosaic
//
// # Image Store
//
// The server keeps its images in a store.Store for the lifetime of the
// process. Passing WithStore shares the store with other components.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
