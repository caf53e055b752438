package pagedesk

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/pagedesk/page"
)

// Uploads are stored as JPEG under <static>/uploads and referenced by image
// and slideshow pages through Image.URL.
const (
	maxImageWidth = 1280
	jpegQuality   = 80
	maxUploadSize = 10 << 20
	uploadsSubdir = "uploads"
)

func (a *App) uploadDir() string {
	return filepath.Join(a.staticDir, uploadsSubdir)
}

// fitWidth scales img down to maxImageWidth, keeping its aspect ratio.
func fitWidth(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxImageWidth {
		return img
	}
	h := max(b.Dy()*maxImageWidth/b.Dx(), 1)
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// encodeUpload turns any decodable upload into a web-sized JPEG and the
// metadata recorded for it.
func encodeUpload(src io.Reader, originalName string) (Image, []byte, error) {
	decoded, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode upload: %w", err)
	}
	img := fitWidth(decoded)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode upload: %w", err)
	}

	stem := Slugify(strings.TrimSuffix(originalName, filepath.Ext(originalName)))
	if stem == "" {
		stem = "image"
	}
	return Image{
		Filename:     stem + ".jpg",
		OriginalName: originalName,
		Width:        img.Bounds().Dx(),
		Height:       img.Bounds().Dy(),
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

// claimFilename picks the first of name, name-2, name-3 ... that is neither
// on disk nor recorded in the store.
func (a *App) claimFilename(name string) (string, error) {
	stem := strings.TrimSuffix(name, ".jpg")
	for n := 1; ; n++ {
		candidate := name
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d.jpg", stem, n)
		}
		if _, err := os.Stat(filepath.Join(a.uploadDir(), candidate)); err == nil {
			continue
		}
		taken, err := a.Store.ImageExists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

// pageUsingImage returns the first image or slideshow page that shows url.
func (a *App) pageUsingImage(url string) (page.Page, bool, error) {
	for _, t := range []page.Type{page.TypeImage, page.TypeSlideshow} {
		pages, err := a.Store.FindPagesByType(t)
		if err != nil {
			return page.Page{}, false, err
		}
		for _, p := range pages {
			if p.Src == url {
				return p, true, nil
			}
			for _, s := range p.Images {
				if s.Src == url {
					return p, true, nil
				}
			}
		}
	}
	return page.Page{}, false, nil
}

func (a *App) handleUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if fh.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	img, data, err := encodeUpload(f, fh.Filename)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}
	if img.Filename, err = a.claimFilename(img.Filename); err != nil {
		return err
	}
	if err := os.MkdirAll(a.uploadDir(), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.uploadDir(), img.Filename), data, 0o644); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}
	if err := a.Store.SaveImage(img); err != nil {
		return err
	}
	a.Log.Info().Str("file", img.Filename).Int("width", img.Width).Int("height", img.Height).Msg("image uploaded")
	return a.renderUploads(c)
}

// handleUploadDelete removes an upload unless a page still shows it.
func (a *App) handleUploadDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	name := c.FormValue("filename")
	if name == "" || filepath.Base(name) != name || strings.HasPrefix(name, ".") {
		return c.String(http.StatusBadRequest, "Filename required")
	}

	img := Image{Filename: name}
	p, used, err := a.pageUsingImage(img.URL())
	if err != nil {
		return err
	}
	if used {
		return c.String(http.StatusConflict, fmt.Sprintf("Image is shown on %q; edit that page first.", p.Title))
	}

	if err := os.Remove(filepath.Join(a.uploadDir(), name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	if err := a.Store.DeleteImage(name); err != nil {
		return err
	}
	a.Log.Info().Str("file", name).Msg("image deleted")
	return a.renderUploads(c)
}

func (a *App) handleUploads(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return a.renderUploads(c)
}

func (a *App) renderUploads(c echo.Context) error {
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminImages(images, CsrfToken(c)))
}
