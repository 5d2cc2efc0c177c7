package imagesink

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"

	"prism/rgbimage"
)

func TestParseDestination(t *testing.T) {
	testCases := []struct {
		in      string
		want    Destination
		wantErr bool
	}{
		{in: "out.png", want: Destination{Scheme: "file", Key: "out.png"}},
		{in: "/tmp/renders/a.jpg", want: Destination{Scheme: "file", Key: "/tmp/renders/a.jpg"}},
		{in: "gs://renders/2021/a.png", want: Destination{Scheme: "gs", Bucket: "renders", Key: "2021/a.png"}},
		{in: "s3://bucket/a.png", want: Destination{Scheme: "s3", Bucket: "bucket", Key: "a.png"}},
		{in: "s3://bucket/", wantErr: true},
		{in: "gs:///a.png", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDestination(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseDestination(%q) = %+v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDestination(%q): %v", tc.in, err)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("ParseDestination(%q) (-got +want)\n%s", tc.in, diff)
			}
		})
	}
}

func testImage() *rgbimage.Image {
	im := rgbimage.New(2, 3)
	im.Set(0, 0, rgbimage.RGB{255, 0, 0})
	im.Set(1, 2, rgbimage.RGB{0, 0, 255})
	return im
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Save(context.Background(), testImage(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	decoded, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("imaging.Open: %v", err)
	}
	if diff := cmp.Diff(rgbimage.FromImage(decoded), testImage()); diff != "" {
		t.Errorf("decoded image (-got +want)\n%s", diff)
	}
}

func TestEncodeUnknownExtension(t *testing.T) {
	if _, err := Encode(io.Discard, testImage(), "out.xyz"); err == nil {
		t.Errorf("Encode to .xyz succeeded, want error")
	}
}

func TestEncodeContentType(t *testing.T) {
	for name, want := range map[string]string{"a.png": "image/png", "a.jpeg": "image/jpeg", "a.bmp": "image/bmp"} {
		got, err := Encode(io.Discard, testImage(), name)
		if err != nil {
			t.Fatalf("Encode(%s): %v", name, err)
		}
		if got != want {
			t.Errorf("Encode(%s) content type = %q, want %q", name, got, want)
		}
	}
}

type fakeS3 struct {
	s3iface.S3API
	got  *s3.PutObjectInput
	body []byte
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	f.got = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestSaveS3(t *testing.T) {
	fake := &fakeS3{}
	err := Save(context.Background(), testImage(), "s3://renders/scenes/spheres.png", WithSink("s3", &S3Sink{Client: fake}))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got, want := aws.StringValue(fake.got.Bucket), "renders"; got != want {
		t.Errorf("Bucket = %q, want %q", got, want)
	}
	if got, want := aws.StringValue(fake.got.Key), "scenes/spheres.png"; got != want {
		t.Errorf("Key = %q, want %q", got, want)
	}
	if got, want := aws.StringValue(fake.got.ContentType), "image/png"; got != want {
		t.Errorf("ContentType = %q, want %q", got, want)
	}
	if got, want := aws.Int64Value(fake.got.ContentLength), int64(len(fake.body)); got != want {
		t.Errorf("ContentLength = %d, want %d", got, want)
	}

	decoded, err := imaging.Decode(bytes.NewReader(fake.body))
	if err != nil {
		t.Fatalf("imaging.Decode: %v", err)
	}
	if diff := cmp.Diff(rgbimage.FromImage(decoded), testImage()); diff != "" {
		t.Errorf("uploaded image (-got +want)\n%s", diff)
	}
}
