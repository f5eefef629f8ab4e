package aws

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	amino "github.com/tendermint/go-amino"

	"github.com/herdius/herdius-savings/blockchain"
	"github.com/herdius/herdius-savings/config"
	"github.com/herdius/herdius-savings/libs/log"
)

var cdc = amino.NewCodec()

// TryBackupBaseBlock uploads a freshly sealed base block to S3 once the
// previous block is confirmed present there. It returns false without error
// when backup is not applicable (no bucket configured, previous block not yet
// backed up).
func TryBackupBaseBlock(env string, lastBlock, baseBlock *blockchain.BaseBlock) (bool, error) {
	bucket := config.GetConfiguration(env).S3Bucket
	if bucket == "" {
		return false, nil
	}
	sess := session.Must(session.NewSession())
	svc := s3.New(sess)

	// Genesis has no predecessor to check for.
	if lastBlock.GetHeight() > 0 {
		found, err := findInS3(svc, bucket, lastBlock)
		if err != nil {
			return false, fmt.Errorf("failure searching S3 for previous block backup: %v", err)
		}
		if !found {
			return false, nil
		}
	}

	uploader := s3manager.NewUploader(sess)
	res, err := backupToS3(uploader, bucket, baseBlock)
	if err != nil {
		return false, fmt.Errorf("could not backup new base block to S3: %v", err)
	}
	log.Info().Msgf("Uploaded base block file to S3: %v", res.Location)
	return true, nil
}

// findInS3 searches for a given baseBlock in S3 in the given bucket
func findInS3(svc *s3.S3, bucket string, baseBlock *blockchain.BaseBlock) (bool, error) {
	search := &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int64(2),
		Prefix:  aws.String(blockKey(baseBlock)),
	}
	result, err := svc.ListObjectsV2(search)
	if err != nil {
		return false, fmt.Errorf("could not list previous block in S3: %v", err)
	}
	return len(result.Contents) > 0, nil
}

// backupToS3 backs up a single baseBlock to S3 in the given bucket
func backupToS3(uploader *s3manager.Uploader, bucket string, baseBlock *blockchain.BaseBlock) (*s3manager.UploadOutput, error) {
	bz, err := cdc.MarshalJSON(baseBlock)
	if err != nil {
		return nil, fmt.Errorf("cannot convert baseBlock to json: %v", err)
	}

	heightStr := strconv.FormatUint(baseBlock.GetHeight(), 10)
	timeStamp := strconv.FormatInt(time.Now().Unix(), 10)

	result, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:               aws.String(bucket),
		Key:                  aws.String(blockKey(baseBlock)),
		Body:                 bytes.NewReader(bz),
		ServerSideEncryption: aws.String("AES256"),
		Tagging:              aws.String(fmt.Sprintf("height=%v&timestamp=%v&blockhash=%v", heightStr, timeStamp, baseBlock.BlockHash)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to S3: %v", err)
	}
	return result, nil
}

func blockKey(baseBlock *blockchain.BaseBlock) string {
	return fmt.Sprintf("%v-%v", baseBlock.GetHeight(), baseBlock.BlockHash)
}
