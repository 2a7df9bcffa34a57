package main

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/dustin/go-humanize"
	"github.com/wbrown/bert_prep/records"
)

// S3Client is the part of the S3 API used to publish record files.
type S3Client interface {
	PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

func newS3Client() (S3Client, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

// parseS3URI splits `s3://bucket/prefix` into its bucket and key prefix.
func parseS3URI(uri string) (bucket string, prefix string, err error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", "", err
	}
	if parsed.Scheme != "s3" || parsed.Host == "" {
		return "", "", fmt.Errorf("invalid S3 URI `%s`, expected "+
			"s3://bucket/prefix", uri)
	}
	return parsed.Host, strings.Trim(parsed.Path, "/"), nil
}

// uploadRecordsS3
// Uploads the train, eval and predict record files in outputDir to the
// bucket and prefix named by uri, keeping their file names.
func uploadRecordsS3(client S3Client, outputDir string, uri string) error {
	bucket, prefix, err := parseS3URI(uri)
	if err != nil {
		return err
	}
	for _, name := range []string{records.TrainFile, records.EvalFile,
		records.PredictFile} {
		if err = uploadFileS3(client, filepath.Join(outputDir, name), bucket,
			path.Join(prefix, name)); err != nil {
			return err
		}
	}
	return nil
}

func uploadFileS3(client S3Client, localPath, bucket, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer file.Close()
	stat, err := file.Stat()
	if err != nil {
		return err
	}
	_, err = client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(stat.Size()),
	})
	if err != nil {
		return fmt.Errorf("uploading %s to s3://%s/%s: %w", localPath,
			bucket, key, err)
	}
	log.Printf("Uploaded %s to s3://%s/%s (%s)", localPath, bucket, key,
		humanize.Bytes(uint64(stat.Size())))
	return nil
}
