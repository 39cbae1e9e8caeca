package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"os"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/platform/envutil"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
	"github.com/ngocanhdo/engkids-backend/internal/platform/media"
)

const avatarSize = 512

// Child-friendly background palette for generated avatars.
var avatarPalette = []color.NRGBA{
	{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
	{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF},
	{R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
	{R: 0xEC, G: 0x48, B: 0x99, A: 0xFF},
	{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
	{R: 0xF4, G: 0x3F, B: 0x5E, A: 0xFF},
	{R: 0x14, G: 0xB8, B: 0xA6, A: 0xFF},
}

type AvatarService interface {
	// CreateStudentAvatar renders an initials avatar, uploads it and points
	// the student row's avatar fields at the new object.
	CreateStudentAvatar(ctx context.Context, student *types.Student) error
	CreateUserAvatar(ctx context.Context, user *types.User) error
	// GenerateInitialsPNG renders without uploading; used for guest
	// principals that have no row to attach the object to.
	GenerateInitialsPNG(name string) (bytes.Buffer, error)
	UploadGuestAvatar(ctx context.Context, name string) (string, error)
}

type avatarService struct {
	log      *logger.Logger
	store    media.Store
	fontFace font.Face
}

func NewAvatarService(log *logger.Logger, store media.Store) AvatarService {
	serviceLog := log.With("service", "AvatarService")

	var face font.Face
	fontPath := envutil.GetEnv("AVATAR_FONT", "", log)
	if fontPath != "" {
		loaded, err := loadFontFace(fontPath, 206)
		if err != nil {
			serviceLog.Warn("Could not load avatar font, falling back to built-in face", "font", fontPath, "error", err)
		} else {
			face = loaded
		}
	}

	return &avatarService{log: serviceLog, store: store, fontFace: face}
}

func (as *avatarService) CreateStudentAvatar(ctx context.Context, student *types.Student) error {
	if student == nil || student.ID == uuid.Nil {
		return fmt.Errorf("student required")
	}
	buf, err := as.GenerateInitialsPNG(student.Name)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(student.AvatarKey)
	newKey := fmt.Sprintf("avatars/student/%s/%d.png", student.ID.String(), time.Now().UnixNano())

	if err := as.store.Upload(ctx, newKey, bytes.NewReader(buf.Bytes()), "image/png"); err != nil {
		return fmt.Errorf("upload student avatar: %w", err)
	}
	student.AvatarKey = newKey
	student.AvatarURL = as.store.PublicURL(newKey)

	if oldKey != "" && oldKey != newKey {
		if err := as.store.Delete(ctx, oldKey); err != nil {
			as.log.Warn("failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}
	return nil
}

func (as *avatarService) CreateUserAvatar(ctx context.Context, user *types.User) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}
	buf, err := as.GenerateInitialsPNG(user.DisplayName)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(user.AvatarKey)
	newKey := fmt.Sprintf("avatars/user/%s/%d.png", user.ID.String(), time.Now().UnixNano())

	if err := as.store.Upload(ctx, newKey, bytes.NewReader(buf.Bytes()), "image/png"); err != nil {
		return fmt.Errorf("upload user avatar: %w", err)
	}
	user.AvatarKey = newKey
	user.AvatarURL = as.store.PublicURL(newKey)

	if oldKey != "" && oldKey != newKey {
		if err := as.store.Delete(ctx, oldKey); err != nil {
			as.log.Warn("failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}
	return nil
}

// UploadGuestAvatar stores a one-off initials avatar for an ephemeral guest
// and returns its public URL. Guests have no row, so nothing tracks the key;
// the object is simply orphaned when the session ends.
func (as *avatarService) UploadGuestAvatar(ctx context.Context, name string) (string, error) {
	buf, err := as.GenerateInitialsPNG(name)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("avatars/guest/%s.png", uuid.New().String())
	if err := as.store.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "image/png"); err != nil {
		return "", fmt.Errorf("upload guest avatar: %w", err)
	}
	return as.store.PublicURL(key), nil
}

func (as *avatarService) GenerateInitialsPNG(name string) (bytes.Buffer, error) {
	dc := gg.NewContext(avatarSize, avatarSize)

	dc.DrawCircle(float64(avatarSize)/2, float64(avatarSize)/2, float64(avatarSize)/2)
	dc.Clip()

	base := avatarPalette[rand.Intn(len(avatarPalette))]
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(avatarSize), float64(avatarSize))
	dc.Fill()

	initials := computeInitials(name)
	if as.fontFace != nil {
		dc.SetFontFace(as.fontFace)
	}
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(avatarSize)/2, float64(avatarSize)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2), cy+(th/2))

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("encode avatar png: %w", err)
	}
	return buf, nil
}

// ProcessUploadedAvatar center-crops an uploaded image to a square, resizes
// it and clips it to a circle; used when an admin uploads a custom photo
// instead of keeping the generated initials.
func ProcessUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

// computeInitials takes the first letters of the first and last
// space-separated parts of the name. One-word names get a single letter.
func computeInitials(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return "?"
	}
	first := []rune(parts[0])
	if len(parts) == 1 {
		return strings.ToUpper(string(first[0]))
	}
	last := []rune(parts[len(parts)-1])
	return strings.ToUpper(string(first[0]) + string(last[0]))
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
