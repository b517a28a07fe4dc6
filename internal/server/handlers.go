package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/ironsheep/image-wizard/internal/imaging"
	"github.com/ironsheep/image-wizard/internal/raster"
)

// ErrMissingArgument is returned when a required tool argument is empty.
var ErrMissingArgument = errors.New("missing required argument")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_mosaic").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Fetches source images from the store by name
//  4. Calls the raster engine or an imaging helper
//  5. Stores any output image under the requested name and describes it
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Store Management
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_list":
		return s.handleImageList(args)
	case "image_delete":
		return s.handleImageDelete(args)

	// Inspection
	case "image_info":
		return s.handleImageInfo(args)
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_preview":
		return s.handleImagePreview(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	// Channel Operations
	case "image_brighten":
		return s.handleImageBrighten(args)
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_greyscale":
		return s.handleImageGreyscale(args)
	case "image_split":
		return s.handleImageSplit(args)
	case "image_combine":
		return s.handleImageCombine(args)

	// Filters and Transforms
	case "image_blur":
		return s.handleKernel(args, raster.BlurKernel())
	case "image_sharpen":
		return s.handleKernel(args, raster.SharpenKernel())
	case "image_filter":
		return s.handleImageFilter(args)
	case "image_color_transform":
		return s.handleImageColorTransform(args)
	case "image_dither":
		return s.handleImageDither(args)
	case "image_mosaic":
		return s.handleImageMosaic(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingArgument, field)
	}
	return nil
}

// storeResult binds dest to r and returns its description.
func (s *Server) storeResult(dest string, r *raster.Raster) *imaging.RasterInfo {
	s.store.Put(dest, r)
	info := imaging.Describe(r)
	info.Name = dest
	return info
}

// transform runs fn on the image named src and stores the result as dest.
func (s *Server) transform(src, dest string, fn func(*raster.Raster) (*raster.Raster, error)) (interface{}, error) {
	if err := required("name", src); err != nil {
		return nil, err
	}
	if err := required("dest", dest); err != nil {
		return nil, err
	}
	r, err := s.store.Get(src)
	if err != nil {
		return nil, err
	}
	out, err := fn(r)
	if err != nil {
		return nil, err
	}
	return s.storeResult(dest, out), nil
}

// === Store Management Handlers ===

type imageFileArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := required("path", a.Path); err != nil {
		return nil, err
	}
	if err := required("name", a.Name); err != nil {
		return nil, err
	}
	r, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.storeResult(a.Name, r), nil
}

// SaveResult reports where an image was written.
type SaveResult struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := required("path", a.Path); err != nil {
		return nil, err
	}
	r, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	if err := imaging.Save(a.Path, r); err != nil {
		return nil, err
	}
	return &SaveResult{Name: a.Name, Path: a.Path}, nil
}

// ListResult describes every stored image, sorted by name.
type ListResult struct {
	Count  int                   `json:"count"`
	Images []*imaging.RasterInfo `json:"images"`
}

func (s *Server) handleImageList(_ json.RawMessage) (interface{}, error) {
	result := &ListResult{Images: []*imaging.RasterInfo{}}
	for _, name := range s.store.Names() {
		r, err := s.store.Get(name)
		if err != nil {
			// Deleted concurrently
			continue
		}
		info := imaging.Describe(r)
		info.Name = name
		result.Images = append(result.Images, info)
	}
	result.Count = len(result.Images)
	return result, nil
}

type imageNameArgs struct {
	Name string `json:"name"`
}

// DeleteResult reports whether a name was bound before deletion.
type DeleteResult struct {
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

func (s *Server) handleImageDelete(args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := required("name", a.Name); err != nil {
		return nil, err
	}
	_, err := s.store.Get(a.Name)
	s.store.Delete(a.Name)
	return &DeleteResult{Name: a.Name, Deleted: err == nil}, nil
}

// === Inspection Handlers ===

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	info := imaging.Describe(r)
	info.Name = a.Name
	return info, nil
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	return imaging.Histogram(r), nil
}

type imagePreviewArgs struct {
	Name   string  `json:"name"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	r, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	if a.Region == "" {
		return imaging.Preview(r, a.Scale)
	}
	return imaging.PreviewRegion(r, a.Region, a.Scale)
}

type imageSampleColorArgs struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(r, a.X, a.Y)
}

type imageDominantColorsArgs struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	r, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColors(r, a.Count)
}

// === Channel Operation Handlers ===

type imageTransformArgs struct {
	Name string `json:"name"`
	Dest string `json:"dest"`
}

type imageBrightenArgs struct {
	imageTransformArgs
	Amount int `json:"amount"`
}

func (s *Server) handleImageBrighten(args json.RawMessage) (interface{}, error) {
	var a imageBrightenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.transform(a.Name, a.Dest, func(r *raster.Raster) (*raster.Raster, error) {
		return r.Brighten(a.Amount), nil
	})
}

type imageFlipArgs struct {
	imageTransformArgs
	Direction string `json:"direction"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := raster.ParseFlipDirection(a.Direction)
	if err != nil {
		return nil, err
	}
	return s.transform(a.Name, a.Dest, func(r *raster.Raster) (*raster.Raster, error) {
		return r.Flip(d)
	})
}

type imageGreyscaleArgs struct {
	imageTransformArgs
	Component string `json:"component"`
}

func (s *Server) handleImageGreyscale(args json.RawMessage) (interface{}, error) {
	var a imageGreyscaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Component == "" {
		return s.transform(a.Name, a.Dest, func(r *raster.Raster) (*raster.Raster, error) {
			return r.ColorTransform(raster.LumaMatrix())
		})
	}
	c, err := raster.ParseComponent(a.Component)
	if err != nil {
		return nil, err
	}
	return s.transform(a.Name, a.Dest, func(r *raster.Raster) (*raster.Raster, error) {
		return r.Greyscale(c)
	})
}

type imageSplitArgs struct {
	Name  string `json:"name"`
	Red   string `json:"red"`
	Green string `json:"green"`
	Blue  string `json:"blue"`
}

// SplitResult describes the three channel images produced by image_split.
type SplitResult struct {
	Red   *imaging.RasterInfo `json:"red"`
	Green *imaging.RasterInfo `json:"green"`
	Blue  *imaging.RasterInfo `json:"blue"`
}

func (s *Server) handleImageSplit(args json.RawMessage) (interface{}, error) {
	var a imageSplitArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	for _, f := range [][2]string{{"red", a.Red}, {"green", a.Green}, {"blue", a.Blue}} {
		if err := required(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	r, err := s.store.Get(a.Name)
	if err != nil {
		return nil, err
	}
	parts, err := r.Split()
	if err != nil {
		return nil, err
	}
	return &SplitResult{
		Red:   s.storeResult(a.Red, parts[0]),
		Green: s.storeResult(a.Green, parts[1]),
		Blue:  s.storeResult(a.Blue, parts[2]),
	}, nil
}

type imageCombineArgs struct {
	Red   string `json:"red"`
	Green string `json:"green"`
	Blue  string `json:"blue"`
	Dest  string `json:"dest"`
}

func (s *Server) handleImageCombine(args json.RawMessage) (interface{}, error) {
	var a imageCombineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := required("dest", a.Dest); err != nil {
		return nil, err
	}
	var channels [3]*raster.Raster
	for i, name := range []string{a.Red, a.Green, a.Blue} {
		r, err := s.store.Get(name)
		if err != nil {
			return nil, err
		}
		channels[i] = r
	}
	combined, err := channels[0].Combine(channels[1], channels[2])
	if err != nil {
		return nil, err
	}
	return s.storeResult(a.Dest, combined), nil
}

// === Filter and Transform Handlers ===

func (s *Server) handleKernel(args json.RawMessage, k raster.Kernel) (interface{}, error) {
	var a imageTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.transform(a.Name, a.Dest, func(r *raster.Raster) (*raster.Raster, error) {
		return r.Filter(k)
	})
}

type imageFilterArgs struct {
	imageTransformArgs
	Kernel [][]float64 `json:"kernel"`
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.transform(a.Name, a.Dest, func(r *raster.Raster) (*raster.Raster, error) {
		return r.Filter(raster.Kernel(a.Kernel))
	})
}

type imageColorTransformArgs struct {
	imageTransformArgs
	Preset string      `json:"preset"`
	Matrix [][]float64 `json:"matrix"`
}

func (s *Server) handleImageColorTransform(args json.RawMessage) (interface{}, error) {
	var a imageColorTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var m raster.ColorMatrix
	switch a.Preset {
	case "sepia":
		m = raster.SepiaMatrix()
	case "luma", "greyscale":
		m = raster.LumaMatrix()
	case "":
		if a.Matrix == nil {
			return nil, fmt.Errorf("%w: preset or matrix", ErrMissingArgument)
		}
		m = raster.ColorMatrix(a.Matrix)
	default:
		return nil, fmt.Errorf("unknown preset: %s", a.Preset)
	}

	return s.transform(a.Name, a.Dest, func(r *raster.Raster) (*raster.Raster, error) {
		return r.ColorTransform(m)
	})
}

type imageDitherArgs struct {
	imageTransformArgs
	Channel string `json:"channel"`
}

func (s *Server) handleImageDither(args json.RawMessage) (interface{}, error) {
	var a imageDitherArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Channel == "" {
		a.Channel = "red"
	}
	ch, err := raster.ParseChannel(a.Channel)
	if err != nil {
		return nil, err
	}
	return s.transform(a.Name, a.Dest, func(r *raster.Raster) (*raster.Raster, error) {
		return r.Dither(ch)
	})
}

type imageMosaicArgs struct {
	imageTransformArgs
	Seeds      int    `json:"seeds"`
	RandomSeed *int64 `json:"random_seed,omitempty"`
}

func (s *Server) handleImageMosaic(args json.RawMessage) (interface{}, error) {
	var a imageMosaicArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rng := s.rng
	if a.RandomSeed != nil {
		rng = rand.New(rand.NewSource(*a.RandomSeed))
	}
	return s.transform(a.Name, a.Dest, func(r *raster.Raster) (*raster.Raster, error) {
		return r.Mosaic(a.Seeds, rng)
	})
}
