package api

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"

	"github.com/openclaw/labelgen/batch"
	"github.com/openclaw/labelgen/label"
	"github.com/openclaw/labelgen/symbol"
)

type labelRequest struct {
	Data        string `json:"data"`
	Type        string `json:"type"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	// Logo includes the configured company logo.
	Logo bool `json:"logo"`
}

func (s *Server) handleLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Type == "" {
		req.Type = symbol.QRCode
	}

	var buf bytes.Buffer
	err := s.render(func(opts batch.Options) error {
		if !req.Logo {
			opts.Logo = nil
		}
		img, err := s.Processor.Label(batch.Item{
			Data:        req.Data,
			ProductName: req.ProductName,
			Price:       req.Price,
		}, opts)
		if err != nil {
			return err
		}
		return png.Encode(&buf, img)
	}, req.Type)
	if err != nil {
		writeFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", batch.FileName(batch.Item{
		Data:        req.Data,
		ProductName: fileLabel(req.ProductName, req.Type),
	})))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type seriesRequest struct {
	Start string `json:"start"`
	Count int    `json:"count"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type sheetRequest struct {
	Type   string         `json:"type"`
	Items  []batch.Item   `json:"items"`
	Series *seriesRequest `json:"series"`
}

func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	var req sheetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Type == "" {
		req.Type = symbol.QRCode
	}

	var list batch.List
	list.Add(req.Items...)
	if req.Series != nil {
		if req.Series.Count < 1 {
			writeError(w, http.StatusUnprocessableEntity, "series count must be at least 1")
			return
		}
		if req.Series.Count > maxSheetItems-list.Len() {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("a sheet holds at most %d items", maxSheetItems))
			return
		}
		items, err := batch.Series(req.Series.Start, req.Series.Name, req.Series.Price, req.Series.Count)
		if err != nil {
			writeFailure(w, err)
			return
		}
		list.Add(items...)
	}
	if list.Len() > maxSheetItems {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("a sheet holds at most %d items", maxSheetItems))
		return
	}

	var (
		buf   bytes.Buffer
		pages int
	)
	err := s.render(func(opts batch.Options) error {
		var err error
		opts.Plain = false
		pages, err = s.Processor.WriteSheet(&buf, list.Items(), opts)
		return err
	}, req.Type)
	if err != nil {
		writeFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="labels.pdf"`)
	w.Header().Set("X-Label-Pages", strconv.Itoa(pages))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// render runs fn under the render lock with options built from the current
// settings. The settings logo is always supplied; callers drop it if unwanted.
func (s *Server) render(fn func(batch.Options) error, symbology string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, _ := s.Settings.Load()
	var logo image.Image
	if st.LogoPath != "" {
		logo = label.LoadLogo(st.LogoPath)
	}
	return fn(batch.Options{
		Symbology: symbology,
		Currency:  st.Currency,
		Logo:      logo,
		Plain:     true,
	})
}

// fileLabel is the name part of a single label's file name.
func fileLabel(name, symbology string) string {
	if name != "" {
		return name
	}
	return symbology
}
