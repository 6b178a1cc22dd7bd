package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"
	"net/http"
	"os"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/storage"
	"admedia-backoffice/internal/util"
	"admedia-backoffice/pkg/apierror"
)

// avatarMaxDim is the bounding box avatars are scaled into.
const avatarMaxDim = 256

type AvatarService struct {
	store *storage.Store
	users UserStore
	audit *AuditService
}

func NewAvatarService(store *storage.Store, users UserStore, audit *AuditService) *AvatarService {
	return &AvatarService{store: store, users: users, audit: audit}
}

// Save sniffs, decodes, scales, and re-encodes an uploaded image, then points
// the user record at the stored JPEG. The previous avatar file is removed
// best-effort.
func (s *AvatarService) Save(ctx context.Context, userID string, r io.Reader, actor model.AuditActor) (model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return model.User{}, fmt.Errorf("read avatar upload: %w", err)
	}
	if len(data) == 0 {
		return model.User{}, apierror.BadRequest("avatar file is empty", "")
	}

	mimeType := util.DetectMIME(data)
	if !util.IsImageMIME(mimeType) || !util.IsDecodableImageMIME(mimeType) {
		return model.User{}, apierror.New("UNSUPPORTED_TYPE",
			"avatar must be a jpeg, png, gif, webp, bmp or tiff image", mimeType,
			http.StatusUnsupportedMediaType)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return model.User{}, apierror.New("UNSUPPORTED_TYPE", "cannot decode image", "",
			http.StatusUnsupportedMediaType)
	}

	scaled := scaleToFit(src, avatarMaxDim)

	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, scaled, &jpeg.Options{Quality: 90}); err != nil {
		return model.User{}, fmt.Errorf("encode avatar: %w", err)
	}

	sum := sha256.Sum256(encoded.Bytes())
	name := hex.EncodeToString(sum[:]) + ".jpg"

	file, err := s.store.OpenForWrite(name)
	if err != nil {
		return model.User{}, fmt.Errorf("open avatar file: %w", err)
	}
	if _, err := file.Write(encoded.Bytes()); err != nil {
		_ = file.Close()
		return model.User{}, fmt.Errorf("write avatar file: %w", err)
	}
	if err := file.Close(); err != nil {
		return model.User{}, fmt.Errorf("close avatar file: %w", err)
	}

	previous := user.Avatar
	if err := s.users.UpdateAvatar(ctx, userID, name); err != nil {
		return model.User{}, err
	}
	user.Avatar = name

	if previous != "" && previous != name {
		_ = s.store.Remove(previous)
	}

	s.audit.Record(ctx, "user.avatar", actor, model.AuditOK, "user", userID, nil, "")
	return user, nil
}

// Open returns the stored avatar JPEG for a user.
func (s *AvatarService) Open(ctx context.Context, userID string) (*os.File, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Avatar == "" {
		return nil, model.ErrAvatarNotFound
	}

	file, err := s.store.OpenForRead(user.Avatar)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrAvatarNotFound
		}
		return nil, err
	}

	return file, nil
}

func scaleToFit(src image.Image, maxDim int) image.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	maxSide := width
	if height > maxSide {
		maxSide = height
	}

	scale := float64(maxDim) / float64(maxSide)
	if scale >= 1 {
		return src
	}

	targetWidth := int(math.Round(float64(width) * scale))
	targetHeight := int(math.Round(float64(height) * scale))
	if targetWidth < 1 {
		targetWidth = 1
	}
	if targetHeight < 1 {
		targetHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
