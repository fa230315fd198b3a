package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"PhotoCollect/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const keyPrefix = "uploads/"

// Object — бэкенд поверх S3-совместимого объектного хранилища.
// Ключи строятся как uploads/<клиент>/<имя>, path-style обязателен
// для совместимых сервисов.
type Object struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

func NewObject(cfg config.StorageConfig) (*Object, error) {
	if cfg.Bucket == "" || cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage: object store config incomplete (bucket=%q endpoint=%q)", cfg.Bucket, cfg.Endpoint)
	}

	endpoint := cfg.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		EndpointResolverWithOptions: aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:               endpoint,
					SigningRegion:     region,
					HostnameImmutable: true,
				}, nil
			},
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &Object{client: client, bucket: cfg.Bucket, endpoint: endpoint}, nil
}

func (o *Object) Kind() string { return "object" }

func (o *Object) key(namespace, filename string) string {
	return keyPrefix + namespace + "/" + filename
}

func (o *Object) Put(ctx context.Context, namespace, filename string, r io.Reader, size int64, contentType string) (Location, error) {
	key := o.key(namespace, filename)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(o.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := o.client.PutObject(ctx, input); err != nil {
		return Location{}, fmt.Errorf("storage: put object %s: %w", key, err)
	}
	return Location{
		Key: key,
		URL: o.endpoint + "/" + o.bucket + "/" + key,
	}, nil
}

func (o *Object) Open(ctx context.Context, namespace, filename string) (io.ReadCloser, error) {
	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key(namespace, filename)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out.Body, nil
}

// List перечисляет все объекты пространства. Сознательно без фильтра по
// расширениям — в бакете лежит только то, что пропустил приём загрузок.
func (o *Object) List(ctx context.Context, namespace string) ([]string, error) {
	keys, err := o.listKeys(ctx, keyPrefix+namespace+"/")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		name := strings.TrimPrefix(k, keyPrefix+namespace+"/")
		if name != "" && !strings.Contains(name, "/") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (o *Object) Namespaces(ctx context.Context) ([]string, error) {
	out, err := o.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(o.bucket),
		Prefix:    aws.String(keyPrefix),
		Delimiter: aws.String("/"),
	})
	if err != nil {
		return nil, err
	}
	var names []string
	for _, p := range out.CommonPrefixes {
		if p.Prefix == nil {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(*p.Prefix, keyPrefix), "/")
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (o *Object) Delete(ctx context.Context, namespace, filename string) (bool, error) {
	key := o.key(namespace, filename)
	// HeadObject до удаления — чтобы честно ответить, был ли файл
	if _, err := o.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	}); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if _, err := o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (o *Object) DeleteNamespace(ctx context.Context, namespace string) (bool, error) {
	keys, err := o.listKeys(ctx, keyPrefix+namespace+"/")
	if err != nil {
		return false, err
	}
	if len(keys) == 0 {
		return false, nil
	}
	// DeleteObjects принимает максимум 1000 ключей за раз
	for len(keys) > 0 {
		batch := keys
		if len(batch) > 1000 {
			batch = batch[:1000]
		}
		keys = keys[len(batch):]

		ids := make([]types.ObjectIdentifier, len(batch))
		for i, k := range batch {
			ids[i] = types.ObjectIdentifier{Key: aws.String(k)}
		}
		if _, err := o.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(o.bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		}); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (o *Object) Exists(ctx context.Context, namespace string) (bool, error) {
	out, err := o.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(o.bucket),
		Prefix:  aws.String(keyPrefix + namespace + "/"),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, err
	}
	return len(out.Contents) > 0, nil
}

func (o *Object) listKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	var token *string
	for {
		out, err := o.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(o.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, err
		}
		for _, obj := range out.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			return keys, nil
		}
		token = out.NextContinuationToken
	}
}

// isNotFound — у S3-совместимых сервисов тип ошибки гуляет, поэтому
// помимо *types.NotFound смотрим и на текст.
func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nk *types.NoSuchKey
	if errors.As(err, &nk) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "NotFound") || strings.Contains(msg, "NoSuchKey") || strings.Contains(msg, "404")
}
