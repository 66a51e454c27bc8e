package report

import (
	"fmt"
	"log"
	"os"

	"github.com/packagewjx/tabprep/pkg/core"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Dao interface {
	DB() *gorm.DB
	SaveRun(run *Run) error
	// 按时间倒序查询最近的limit条记录
	QueryRecentRuns(limit int) ([]*Run, error)
}

type daoImpl struct {
	db *gorm.DB
}

var _ Dao = &daoImpl{}

func NewDao(host, user, password, database string) (Dao, error) {
	databaseURL := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, database)
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "", 0), logger.Config{
			LogLevel: logger.Silent,
		}),
	})
	if err != nil {
		return nil, errors.Wrapf(core.ErrIO, "连接数据库错误: %v", err)
	}

	// 创建表格等
	err = db.AutoMigrate(&RunRecordDO{})
	if err != nil {
		return nil, errors.Wrapf(core.ErrIO, "创建表格时出现异常: %v", err)
	}

	return NewDaoWithDB(db), nil
}

// NewDaoWithDB wraps an opened connection. The table must already exist.
func NewDaoWithDB(db *gorm.DB) Dao {
	return &daoImpl{db: db}
}

func (d *daoImpl) DB() *gorm.DB {
	return d.db
}

func (d *daoImpl) SaveRun(run *Run) error {
	if run == nil {
		return errors.Wrap(core.ErrValue, "run is nil")
	}
	do := runToDO(run)
	if err := d.db.Create(do).Error; err != nil {
		return errors.Wrapf(core.ErrIO, "保存运行记录%s出错: %v", run.Name, err)
	}
	run.ID = do.ID
	return nil
}

func (d *daoImpl) QueryRecentRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		return nil, errors.Wrapf(core.ErrValue, "limit应该大于0，现在为%d", limit)
	}
	doarr := make([]*RunRecordDO, 0, limit)
	err := d.db.Order("id desc").Limit(limit).Find(&doarr).Error
	if err != nil {
		return nil, errors.Wrapf(core.ErrIO, "查询运行记录出错: %v", err)
	}

	result := make([]*Run, len(doarr))
	for i, do := range doarr {
		result[i] = doToRun(do)
	}
	return result, nil
}
